package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// RoundWithFourDecimalPlace é usado para comparar razões sem ruído de ponto flutuante
func RoundWithFourDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*10000) / 10000
}
