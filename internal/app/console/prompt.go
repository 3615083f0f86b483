package console

import (
	"strconv"

	"github.com/chzyer/readline"
	"github.com/cockroachdb/errors"
)

// Prompt is the default interactive prompt text.
const Prompt = "dirbox> "

// NewPrompt creates a readline prompt with history and command completion.
// trackCount bounds the indices offered after "play".
func NewPrompt(trackCount int, historyFile string) (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            Prompt,
		HistoryFile:       historyFile,
		AutoComplete:      newCompleter(trackCount),
		InterruptPrompt:   "^C",
		EOFPrompt:         "quit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create prompt")
	}
	return rl, nil
}

func newCompleter(trackCount int) *readline.PrefixCompleter {
	indices := readline.PcItemDynamic(func(string) []string {
		out := make([]string, trackCount)
		for i := range out {
			out[i] = strconv.Itoa(i)
		}
		return out
	})

	return readline.NewPrefixCompleter(
		readline.PcItem("play", indices),
		readline.PcItem("pause"),
		readline.PcItem("resume"),
		readline.PcItem("stop"),
		readline.PcItem("next"),
		readline.PcItem("skip"),
		readline.PcItem("prev"),
		readline.PcItem("previous"),
		readline.PcItem("list"),
		readline.PcItem("status"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
		readline.PcItem("exit"),
	)
}
