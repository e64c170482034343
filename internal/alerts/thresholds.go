package alerts

// Limit is a (warn, crit) pair. A value strictly above Crit is critical,
// strictly above Warn a warning.
type Limit struct {
	Warn float64
	Crit float64
}

type Thresholds struct {
	CPU         Limit
	RAM         Limit
	Disk        Limit
	Temperature Limit
	Swap        Limit
	Connections Limit
	Processes   Limit
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		CPU:         Limit{Warn: 70, Crit: 90},
		RAM:         Limit{Warn: 75, Crit: 90},
		Disk:        Limit{Warn: 80, Crit: 95},
		Temperature: Limit{Warn: 70, Crit: 85},
		Swap:        Limit{Warn: 50, Crit: 80},
		Connections: Limit{Warn: 1000, Crit: 5000},
		Processes:   Limit{Warn: 300, Crit: 500},
	}
}
