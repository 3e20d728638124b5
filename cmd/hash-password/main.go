// Command hash-password reads the admin password from stdin and prints
// the bcrypt hash to put in ADMIN_PASSWORD_HASH.
//
//	printf '%s' "$PASSWORD" | hash-password -cost 12
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/festival-program/internal/logging"
	"github.com/iliyamo/festival-program/internal/utils"
)

var errEmptyPassword = errors.New("empty password")

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()
	logging.Init(logging.Config{Level: "info", Format: "console"})

	hash, err := hashFrom(os.Stdin, *cost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password")
	}
	fmt.Println(hash)
}

// hashFrom hashes the first line of r.  The trailing newline is dropped so
// `echo secret | hash-password` and printf give the same hash.
func hashFrom(r io.Reader, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", fmt.Errorf("cost %d outside %d..%d", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errEmptyPassword
	}
	return utils.HashPassword(line, cost)
}
