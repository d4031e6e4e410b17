package initializer

import (
	"bytes"
	"maps"
	"path/filepath"

	"github.com/joho/godotenv"
)

// HasCustomEnv reports whether dir holds a .env the user has changed: either
// there is no .env.example to compare with, or the two differ in their
// parsed key/value pairs. Files that do not parse are compared byte for byte.
func (i *Initializer) HasCustomEnv(dir string) bool {
	envData, err := i.fs.ReadFile(filepath.Join(dir, ".env"))
	if err != nil {
		return false
	}

	exampleData, err := i.fs.ReadFile(filepath.Join(dir, ".env.example"))
	if err != nil {
		i.logger.Debug("custom env: no .env.example", "dir", dir)
		return true
	}

	env, envErr := godotenv.Parse(bytes.NewReader(envData))
	example, exampleErr := godotenv.Parse(bytes.NewReader(exampleData))
	if envErr != nil || exampleErr != nil {
		return !bytes.Equal(bytes.TrimSpace(envData), bytes.TrimSpace(exampleData))
	}

	custom := !maps.Equal(env, example)
	i.logger.Debug("custom env: compared with example", "dir", dir, "custom", custom)
	return custom
}
