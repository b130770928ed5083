// Package credgen produces disposable mailbox credentials: a random alias
// address under a configured domain and a password meeting minimal
// composition rules.
package credgen

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
)

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"

	passwordLength = 12
)

// ErrNameList reports a missing or too-small name list. It is a deployment
// problem, not a transient one, and is surfaced as such.
var ErrNameList = errors.New("name list must contain at least 2 entries")

// LoadNames reads a plain-text name list, one name per line, skipping blank
// lines.
func LoadNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open name list: %w", err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read name list: %w", err)
	}
	return names, nil
}

// GenerateAddress concatenates two uniformly chosen names (with replacement,
// so doubled names are possible and fine) under the given domain.
func GenerateAddress(names []string, domain string) (string, error) {
	if len(names) < 2 {
		return "", ErrNameList
	}
	first := names[rand.IntN(len(names))]
	second := names[rand.IntN(len(names))]
	return first + second + "@" + domain, nil
}

// GeneratePassword returns a 12-character password guaranteed to contain at
// least one lowercase letter, one uppercase letter and one digit. One
// character is seeded from each class, the rest drawn from the union, then
// the whole thing is shuffled so the class characters don't sit at fixed
// positions.
func GeneratePassword() string {
	all := lowercase + uppercase + digits

	chars := make([]byte, 0, passwordLength)
	chars = append(chars,
		lowercase[rand.IntN(len(lowercase))],
		uppercase[rand.IntN(len(uppercase))],
		digits[rand.IntN(len(digits))],
	)
	for len(chars) < passwordLength {
		chars = append(chars, all[rand.IntN(len(all))])
	}
	rand.Shuffle(len(chars), func(i, j int) {
		chars[i], chars[j] = chars[j], chars[i]
	})
	return string(chars)
}
