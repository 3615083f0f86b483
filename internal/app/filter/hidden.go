package filter

import "strings"

const HiddenFileFilterName = "hidden_file_filter"

// HiddenFileFilter rejects dot files such as editor or OS metadata.
type HiddenFileFilter struct{}

func (f *HiddenFileFilter) Name() string {
	return HiddenFileFilterName
}

func (f *HiddenFileFilter) Description() string {
	return "Skips files whose name starts with a dot"
}

func (f *HiddenFileFilter) ReturnCodes() []string {
	return []string{"hidden_file"}
}

func (f *HiddenFileFilter) ValidateConfig(settings map[string]any) error {
	return nil
}

func (f *HiddenFileFilter) Check(c Candidate) Result {
	if strings.HasPrefix(c.Track.Name, ".") {
		return Reject("hidden_file")
	}
	return Accept()
}

func init() {
	Register(HiddenFileFilterName, func() Filter {
		return &HiddenFileFilter{}
	})
}
