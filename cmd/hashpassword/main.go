// Command hashpassword prints a bcrypt hash for AUTH_BOOTSTRAP_PASSWORD_HASH
// so the bootstrap operator password never has to sit in plain text.
//
// Usage: echo -n 'secret' | hashpassword [-cost 12]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/heartmarshall/studio-bookings/internal/auth"
)

func main() {
	cost := flag.Int("cost", 12, "bcrypt cost")
	flag.Parse()

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(os.Stderr, "hashpassword: read password from stdin:", err)
		os.Exit(1)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		fmt.Fprintln(os.Stderr, "hashpassword: empty password")
		os.Exit(1)
	}

	hasher, err := auth.NewPasswordHasher(*cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashpassword:", err)
		os.Exit(1)
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashpassword:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
