package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mrlokans/qotd/internal/entities"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid question ID %q", raw)
	}
	return uint(id), nil
}

func parseIDs(args []string) ([]uint, error) {
	ids := make([]uint, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func validateLevelFlag(level int, optional bool) error {
	if optional && level == 0 {
		return nil
	}
	if level < entities.MinSeriousnessLevel || level > entities.MaxSeriousnessLevel {
		return fmt.Errorf("level must be between %d and %d", entities.MinSeriousnessLevel, entities.MaxSeriousnessLevel)
	}
	return nil
}

// maskKey shows only the last four characters of an API key.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", 8) + key[len(key)-4:]
}
