// Package initializer installs and tracks the per-project .auto-claude data
// directory.
//
// A project is "installed" when <project>/.auto-claude exists. It holds only
// user data (specs, ideation, insights, roadmap) and a .version.json record
// describing the framework source it was last synced with:
//
//	<project>/.auto-claude/
//	  .version.json   {version, sourceHash, sourcePath, initializedAt, updatedAt}
//	  specs/.gitkeep
//	  ideation/.gitkeep
//	  insights/.gitkeep
//	  roadmap/.gitkeep
//
// A sibling <project>/auto-claude directory is the framework's own source
// checked out inside the project. It is never treated as an installation.
//
// # Update detection
//
// An update is offered only when both the source fingerprint and the source
// VERSION differ from what .version.json recorded. A fingerprint change alone
// (generated files, timestamps) is not enough.
//
// # Concurrency
//
// Nothing here locks. The exists-then-create sequence in InitializeProject is
// not guarded against a second initializer, so callers serialize calls per
// project.
package initializer
