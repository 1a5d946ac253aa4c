package commands

import (
	"fmt"
	"strconv"
)

// parseInts converts positional arguments to integers, naming the first bad one.
func parseInts(names []string, args []string) ([]int, error) {
	values := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			name := "argument"
			if i < len(names) {
				name = names[i]
			}

			return nil, fmt.Errorf("invalid %s %q: must be an integer", name, arg)
		}
		values[i] = v
	}

	return values, nil
}
