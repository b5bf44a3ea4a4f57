// internal/utils/math.go
package utils

import (
	"fmt"
	"math"
)

// Lerp выполняет стандартную линейную интерполяцию
func Lerp(from, to float64, t float64) float64 {
	return from + (to-from)*t
}

// NormalizeAngle нормализует угол в диапазон [-π, π]
func NormalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// FormatTime переводит миллисекунды игрового времени в вид "мм:сс".
func FormatTime(ms float64) string {
	if math.IsNaN(ms) || ms < 0 {
		return "00:00"
	}
	seconds := int(ms / 1000)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
