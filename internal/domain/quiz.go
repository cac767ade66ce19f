package domain

import "math"

// Poles del modelo, en orden canonico: el primer polo de cada eje gana los empates.
const (
	PoleE = "E"
	PoleI = "I"
	PoleS = "S"
	PoleN = "N"
	PoleT = "T"
	PoleF = "F"
	PoleJ = "J"
	PoleP = "P"
)

// Direcciones posibles de una respuesta.
const (
	DirectionDisagree = -1
	DirectionNeutral  = 0
	DirectionAgree    = 1
)

// MaxStrength es el peso maximo de una respuesta.
const MaxStrength = 2

// Axis es una dicotomia de personalidad. First es el polo canonico.
type Axis struct {
	First      string
	Second     string
	FirstName  string
	SecondName string
}

// Axes lista los cuatro ejes en el orden en que se compone el tipo.
var Axes = [4]Axis{
	{First: PoleE, Second: PoleI, FirstName: "Extroverted", SecondName: "Introverted"},
	{First: PoleS, Second: PoleN, FirstName: "Sensing", SecondName: "Intuitive"},
	{First: PoleT, Second: PoleF, FirstName: "Thinking", SecondName: "Feeling"},
	{First: PoleJ, Second: PoleP, FirstName: "Judging", SecondName: "Perceiving"},
}

// Poles devuelve los 8 polos en orden canonico.
func Poles() []string {
	poles := make([]string, 0, len(Axes)*2)
	for _, a := range Axes {
		poles = append(poles, a.First, a.Second)
	}
	return poles
}

// AxisOf devuelve el eje al que pertenece el polo.
func AxisOf(pole string) (Axis, bool) {
	for _, a := range Axes {
		if a.First == pole || a.Second == pole {
			return a, true
		}
	}
	return Axis{}, false
}

// Opposite devuelve el otro polo del mismo eje.
func (a Axis) Opposite(pole string) string {
	if pole == a.First {
		return a.Second
	}
	return a.First
}

// NameOf devuelve el nombre legible de un polo del eje.
func (a Axis) NameOf(pole string) string {
	if pole == a.First {
		return a.FirstName
	}
	return a.SecondName
}

type Question struct {
	Text string `json:"question"`
	Pole string `json:"type"`
}

type Answer struct {
	QuestionIndex int `json:"question_index"`
	Direction     int `json:"direction"`
	Strength      int `json:"strength"`
}

// ScoreVector acumula puntos por polo. Siempre contiene las 8 claves.
type ScoreVector map[string]int

// NewScoreVector devuelve un vector con los 8 polos en cero.
func NewScoreVector() ScoreVector {
	v := make(ScoreVector, 8)
	for _, p := range Poles() {
		v[p] = 0
	}
	return v
}

// Clone copia el vector garantizando las 8 claves.
func (v ScoreVector) Clone() ScoreVector {
	out := NewScoreVector()
	for k, val := range v {
		out[k] = val
	}
	return out
}

// PersonalityType es el codigo de 4 letras, ej. "INTP".
type PersonalityType string

type TraitStrength struct {
	Letter   string  `json:"letter"`
	Name     string  `json:"name"`
	Strength float64 `json:"strength"`
}

// Percent redondea la fuerza al entero mas cercano para mostrarla.
func (t TraitStrength) Percent() int {
	return int(math.Round(t.Strength))
}

// TraitBreakdown tiene una entrada por eje, en el orden de Axes.
type TraitBreakdown []TraitStrength
