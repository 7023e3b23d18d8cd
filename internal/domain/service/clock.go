package service

import "time"

// Clock abstracts wall-clock access so scheduling logic stays
// deterministic under test.
type Clock interface {
	Now() time.Time
}
