package domain

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrDivideByZero    = errors.New("cannot divide by zero")
	ErrUnknownOperator = errors.New("unknown operator")
)

// Operator is one of the four arithmetic operations.
type Operator string

const (
	Add      Operator = "add"
	Subtract Operator = "subtract"
	Multiply Operator = "multiply"
	Divide   Operator = "divide"
)

// Calculator performs arithmetic and keeps a single memory register. It is safe for
// concurrent use.
type Calculator struct {
	mu     sync.RWMutex
	memory float64
}

func (c *Calculator) Add(a, b float64) float64 { return a + b }

func (c *Calculator) Subtract(a, b float64) float64 { return a - b }

func (c *Calculator) Multiply(a, b float64) float64 { return a * b }

func (c *Calculator) Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

// Apply runs op on a and b.
func (c *Calculator) Apply(op Operator, a, b float64) (float64, error) {
	switch Operator(strings.ToLower(string(op))) {
	case Add:
		return c.Add(a, b), nil
	case Subtract:
		return c.Subtract(a, b), nil
	case Multiply:
		return c.Multiply(a, b), nil
	case Divide:
		return c.Divide(a, b)
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownOperator, op)
}

func (c *Calculator) StoreInMemory(v float64) {
	c.mu.Lock()
	c.memory = v
	c.mu.Unlock()
}

func (c *Calculator) RecallMemory() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.memory
}

func (c *Calculator) ClearMemory() {
	c.StoreInMemory(0)
}
