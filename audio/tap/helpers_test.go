package tap

import "os"

func writeFile(path string) error {
	return os.WriteFile(path, []byte("not audio"), 0o600)
}
