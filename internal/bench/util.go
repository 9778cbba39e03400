package bench

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
)

func randForSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// ensureDir создаёт каталог файла, если он задан.
func ensureDir(path string) error {
	d := filepath.Dir(path)
	if d == "." || d == "" {
		return nil
	}
	return os.MkdirAll(d, 0o755)
}

func format(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', 6, 64)
	default:
		return fmt.Sprint(x)
	}
}
