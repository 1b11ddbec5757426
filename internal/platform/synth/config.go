package synth

import (
	"errors"
	"fmt"
	"time"
)

// Config controls the volume and shape of a generated dataset.
type Config struct {
	Patients    int       `json:"patients"`
	Staff       int       `json:"staff"`
	Medications int       `json:"medications"`
	Procedures  int       `json:"procedures"`
	Years       int       `json:"years"`
	Start       time.Time `json:"start"`
	Seed        uint64    `json:"seed"`
}

// DefaultConfig returns the configuration of the reference dataset.
func DefaultConfig() Config {
	return Config{
		Patients:    500,
		Staff:       150,
		Medications: 200,
		Procedures:  100,
		Years:       5,
		Start:       time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Seed:        42,
	}
}

// End is the last day of the generation horizon, inclusive.
func (c Config) End() time.Time {
	return c.Start.AddDate(c.Years, 0, 0)
}

// HorizonDays is the number of whole days between Start and End.
func (c Config) HorizonDays() int {
	return floorDays(c.Start, c.End())
}

// Validate checks that the configuration can produce a dataset.
func (c Config) Validate() error {
	if c.Patients < 1 {
		return fmt.Errorf("patients must be positive, got %d", c.Patients)
	}
	if c.Staff < 1 {
		return fmt.Errorf("staff must be positive, got %d", c.Staff)
	}
	if c.Medications < 3 {
		return fmt.Errorf("medications must be at least 3, got %d", c.Medications)
	}
	if c.Procedures < 1 {
		return fmt.Errorf("procedures must be positive, got %d", c.Procedures)
	}
	if c.Years < 1 {
		return fmt.Errorf("years must be positive, got %d", c.Years)
	}
	if c.Start.IsZero() {
		return errors.New("start date is required")
	}
	return nil
}
