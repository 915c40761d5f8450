package actions

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SleepHandler pauses a group for a number of seconds
type SleepHandler struct{}

func (h *SleepHandler) IsSupported() bool { return true }

func (h *SleepHandler) Execute(ctx context.Context, code string) (string, error) {
	d, err := parseSeconds(code)
	if err != nil {
		return "", err
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return fmt.Sprintf("Slept for %.2f seconds", d.Seconds()), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (h *SleepHandler) Validate(code string) error {
	_, err := parseSeconds(code)
	return err
}

func parseSeconds(code string) (time.Duration, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, fmt.Errorf("empty duration")
	}
	val, err := strconv.ParseFloat(code, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", code)
	}
	if val < 0 {
		return 0, fmt.Errorf("duration cannot be negative")
	}
	return time.Duration(val * float64(time.Second)), nil
}
