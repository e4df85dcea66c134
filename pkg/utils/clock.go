package utils

import "time"

// Clock abstrai a leitura do horário atual
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// SystemClock retorna o relógio real em UTC
func SystemClock() Clock {
	return systemClock{}
}

// FixedClock é um relógio parado, usado em testes e execuções retroativas
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}
