package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed messages.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// MessagesList returns the embedded puzzle messages in file order.
func MessagesList() ([]string, error) {
	return readLines("messages.txt")
}
