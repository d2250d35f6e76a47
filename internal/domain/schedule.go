package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// ParseClock разбирает строку "HH:MM" в минуты от начала суток
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hours in %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minutes in %q", s)
	}

	return hours*60 + minutes, nil
}

// MinutesOfDay возвращает минуты от полуночи для момента времени
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// IsOpenAt определяет, открыто ли заведение в указанную минуту суток.
// Граница открытия включается, граница закрытия - нет.
// Окно close < open (например 22:00-02:00) переходит через полночь.
// Отсутствующее или некорректное время трактуется как «закрыто».
func IsOpenAt(openTime, closeTime *string, nowMinutes int) bool {
	if openTime == nil || closeTime == nil {
		return false
	}

	open, err := ParseClock(*openTime)
	if err != nil {
		return false
	}
	closed, err := ParseClock(*closeTime)
	if err != nil {
		return false
	}

	now := ((nowMinutes % minutesPerDay) + minutesPerDay) % minutesPerDay

	if closed < open {
		// Ночное окно: внутри, если после открытия ИЛИ до закрытия
		return now >= open || now < closed
	}
	return now >= open && now < closed
}
