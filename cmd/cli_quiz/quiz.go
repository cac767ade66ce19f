package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"persona-quiz/internal/domain"
	"persona-quiz/internal/service"
)

// parseResponse traduce "-2".."2" a direccion y fuerza.
func parseResponse(raw string) (int, int, error) {
	raw = strings.TrimSpace(raw)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, 0, fmt.Errorf("respuesta invalida %q", raw)
	}
	switch {
	case v == 0:
		return domain.DirectionNeutral, 0, nil
	case v > 0 && v <= domain.MaxStrength:
		return domain.DirectionAgree, v, nil
	case v < 0 && -v <= domain.MaxStrength:
		return domain.DirectionDisagree, -v, nil
	}
	return 0, 0, fmt.Errorf("respuesta fuera de rango %q (usa -%d..%d)", raw, domain.MaxStrength, domain.MaxStrength)
}

func parseAnswerList(raw string) ([]domain.Answer, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("no hay respuestas")
	}
	parts := strings.Split(raw, ",")
	out := make([]domain.Answer, 0, len(parts))
	for i, p := range parts {
		dir, strength, err := parseResponse(p)
		if err != nil {
			return nil, fmt.Errorf("pregunta %d: %w", i+1, err)
		}
		out = append(out, domain.Answer{QuestionIndex: i, Direction: dir, Strength: strength})
	}
	return out, nil
}

// runQuiz conduce la sesion leyendo lineas de in. Devuelve false si el
// usuario sale antes de completar.
func runQuiz(in io.Reader, out io.Writer, questions []domain.Question, session *service.QuizSession) (bool, error) {
	reader := bufio.NewReader(in)
	total := len(questions)

	fmt.Fprintln(out, "\n--- TEST DE PERSONALIDAD ---")
	fmt.Fprintf(out, "Responde de -%d (muy en desacuerdo) a %d (muy de acuerdo). 'b' vuelve atras, 'q' sale.\n", domain.MaxStrength, domain.MaxStrength)

	for session.State != service.QuizCompleted {
		idx := session.CurrentIndex
		current := ""
		if a := session.Answers[idx]; a != nil {
			current = fmt.Sprintf(" (actual: %d)", a.Direction*a.Strength)
		}
		fmt.Fprintf(out, "\n[%d/%d] %s%s: ", idx+1, total, questions[idx].Text, current)

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("leer input: %w", err)
		}
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) == "" {
			return false, nil
		}
		line = strings.TrimSpace(line)

		switch strings.ToLower(line) {
		case "q", "salir":
			return false, nil
		case "b":
			if err := session.Back(); err != nil {
				fmt.Fprintln(out, "No hay pregunta anterior.")
			}
			continue
		}

		dir, strength, err := parseResponse(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if err := session.Answer(dir, strength); err != nil {
			fmt.Fprintln(out, err)
		}
	}
	return true, nil
}

func printScore(out io.Writer, t domain.PersonalityType, scores domain.ScoreVector, traits domain.TraitBreakdown) {
	fmt.Fprintf(out, "\nTu tipo: %s\n", t)
	for _, axis := range domain.Axes {
		fmt.Fprintf(out, "  %s %d / %s %d\n", axis.First, scores[axis.First], axis.Second, scores[axis.Second])
	}
	for _, tr := range traits {
		fmt.Fprintf(out, "  %-12s %3d%%\n", tr.Name, tr.Percent())
	}
}

func printChange(out io.Writer, change domain.ScoreDelta) {
	if len(change) == 0 {
		fmt.Fprintln(out, "Primer resultado: no hay cambios para comparar.")
		return
	}
	fmt.Fprintln(out, "Cambio respecto del resultado anterior:")
	for _, pole := range domain.Poles() {
		fmt.Fprintf(out, "  %s %+d\n", pole, change[pole])
	}
}

func printHistory(out io.Writer, results []domain.TestResult) {
	if len(results) == 0 {
		fmt.Fprintln(out, "Sin resultados.")
		return
	}
	for _, r := range results {
		fmt.Fprintf(out, "%s  %s  %s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.PersonalityType, r.ID)
		if r.Notes != "" {
			fmt.Fprintf(out, "    notas: %s\n", r.Notes)
		}
	}
}
