package expand

// Argument is a resolved named or positional argument. Name is empty for
// positional arguments.
type Argument struct {
	Name   string   `json:"name,omitempty"`
	Values []string `json:"values"`
}

func (a Argument) Positional() bool {
	return a.Name == ""
}

func (a Argument) tokens(value string) []string {
	if a.Positional() {
		return []string{value}
	}
	return []string{a.Name, value}
}

// Compose combines the argument value lists into token tuples, one per
// output command.
func Compose(mode Mode, args []Argument) [][]string {
	if mode == Linked {
		return LinkedTuples(args)
	}
	return CartesianTuples(args)
}

// CartesianTuples returns the cross product of all value lists. The first
// argument varies slowest and the last one fastest.
func CartesianTuples(args []Argument) [][]string {
	for _, arg := range args {
		if len(arg.Values) == 0 {
			return nil
		}
	}

	tuples := [][]string{}
	index := make([]int, len(args))
	for {
		tuple := []string{}
		for i, arg := range args {
			tuple = append(tuple, arg.tokens(arg.Values[index[i]])...)
		}
		tuples = append(tuples, tuple)

		k := len(args) - 1
		for ; k >= 0; k-- {
			index[k]++
			if index[k] < len(args[k].Values) {
				break
			}
			index[k] = 0
		}
		if k < 0 {
			return tuples
		}
	}
}

// LinkedTuples pairs values by position. Lists shorter than the longest one
// repeat their last value.
func LinkedTuples(args []Argument) [][]string {
	length := 0
	for _, arg := range args {
		if len(arg.Values) == 0 {
			return nil
		}
		if len(arg.Values) > length {
			length = len(arg.Values)
		}
	}
	if len(args) == 0 {
		return [][]string{{}}
	}

	tuples := make([][]string, 0, length)
	for i := 0; i < length; i++ {
		tuple := []string{}
		for _, arg := range args {
			value := arg.Values[len(arg.Values)-1]
			if i < len(arg.Values) {
				value = arg.Values[i]
			}
			tuple = append(tuple, arg.tokens(value)...)
		}
		tuples = append(tuples, tuple)
	}
	return tuples
}
