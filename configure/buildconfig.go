package configure

import (
	"fmt"
	"io"
	"io/ioutil"
	"math"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/mitchellh/go-homedir"
)

// BuildConfig holds the values supplied by the build configuration step,
// keyed by placeholder token.
type BuildConfig struct {
	Source string
	Values map[string]int
}

// Parameters obtained from the YAML build configuration file
type buildFile struct {
	Flags map[string]interface{} `json:"flags"`
}

func NewBuildConfig() *BuildConfig {
	return &BuildConfig{Values: make(map[string]int)}
}

// LoadBuildConfig reads a YAML build configuration. A leading "~" in path
// is expanded to the home directory.
func LoadBuildConfig(path string) (bc *BuildConfig, err error) {
	var (
		data []byte
	)
	if path, err = homedir.Expand(path); err != nil {
		return
	}
	if data, err = ioutil.ReadFile(path); err != nil {
		return
	}
	bc = NewBuildConfig()
	bc.Source = path
	if err = bc.Parse(data); err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		bc = nil
	}
	return
}

func (bc *BuildConfig) Parse(data []byte) (err error) {
	var (
		bf buildFile
		v  int
	)
	if err = yaml.Unmarshal(data, &bf); err != nil {
		return
	}
	for token, raw := range bf.Flags {
		if v, err = normalize(raw); err != nil {
			return fmt.Errorf("flag %s: %w", token, err)
		}
		bc.Values[token] = v
	}
	return
}

// Set applies a TOKEN=VALUE assignment, the same spelling cmake -D accepts
// for boolean cache entries.
func (bc *BuildConfig) Set(assign string) (err error) {
	var (
		v int
	)
	eq := strings.IndexByte(assign, '=')
	if eq <= 0 {
		return fmt.Errorf("%w: expected TOKEN=VALUE, got %q", ErrInvalidValue, assign)
	}
	token := strings.TrimSpace(assign[:eq])
	if v, err = normalize(strings.TrimSpace(assign[eq+1:])); err != nil {
		return fmt.Errorf("flag %s: %w", token, err)
	}
	bc.Values[token] = v
	return
}

func (bc *BuildConfig) Tokens() (tokens []string) {
	tokens = make([]string, 0, len(bc.Values))
	for k := range bc.Values {
		tokens = append(tokens, k)
	}
	sort.Strings(tokens)
	return
}

func (bc *BuildConfig) Print(w io.Writer) {
	if bc.Source != "" {
		fmt.Fprintf(w, "\"%s\"\t= Source\n", bc.Source)
	}
	for _, token := range bc.Tokens() {
		fmt.Fprintf(w, "[%d]\t= %s\n", bc.Values[token], token)
	}
}

func normalize(raw interface{}) (v int, err error) {
	switch val := raw.(type) {
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case float64:
		if val != math.Trunc(val) || math.Abs(val) > math.MaxInt32 {
			break
		}
		return int(val), nil
	case int:
		return val, nil
	case string:
		switch strings.ToUpper(strings.TrimSpace(val)) {
		case "1", "ON", "TRUE", "YES", "Y":
			return 1, nil
		case "0", "OFF", "FALSE", "NO", "N":
			return 0, nil
		}
	}
	err = fmt.Errorf("%w: %v", ErrInvalidValue, raw)
	return
}
