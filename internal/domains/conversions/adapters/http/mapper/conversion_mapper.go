package mapper

// Temperature echoes a temperature conversion.
type Temperature struct {
	Value  float64 `json:"value"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
}

// Unit echoes a named unit conversion.
type Unit struct {
	Conversion string  `json:"conversion"`
	Value      float64 `json:"value"`
	Result     float64 `json:"result"`
}

type Operands struct {
	A *float64 `json:"a" binding:"required"`
	B *float64 `json:"b" binding:"required"`
}

type Calculation struct {
	Operator string  `json:"operator"`
	A        float64 `json:"a"`
	B        float64 `json:"b"`
	Result   float64 `json:"result"`
}

// Memory is the calculator's stored value.
type Memory struct {
	Value *float64 `json:"value" binding:"required"`
}
