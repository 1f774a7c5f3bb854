package cli

import (
	"strings"

	"github.com/manifoldco/promptui"
)

// Choice is one entry of a Select menu.
type Choice struct {
	Key   string
	Label string
}

// Select shows the choices and returns the key of the one picked. Typing
// filters choices by key or label prefix.
func Select(label string, choices ...Choice) (string, error) {
	if len(choices) == 0 {
		return "", nil
	}

	labels := make([]string, len(choices))
	for i, c := range choices {
		labels[i] = c.Label
	}

	sel := &promptui.Select{
		Label: label,
		Items: labels,
		Size:  len(labels),
		Searcher: func(input string, index int) bool {
			return matchChoice(choices[index], input)
		},
	}

	idx, _, err := sel.Run()
	if err != nil {
		return "", err
	}

	return choices[idx].Key, nil
}

func matchChoice(c Choice, input string) bool {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return true
	}

	return strings.HasPrefix(strings.ToLower(c.Key), input) ||
		strings.HasPrefix(strings.ToLower(c.Label), input)
}
