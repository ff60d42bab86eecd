package storage

import "fmt"

// ParseStrategy maps a config/CLI string to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "fifo", "FIFO":
		return FIFO, nil
	case "lru", "LRU":
		return LRU, nil
	case "clock", "CLOCK":
		return Clock, nil
	default:
		return 0, newError(KindGeneric, "ParseStrategy", fmt.Errorf("unknown replacement strategy %q", name))
	}
}
