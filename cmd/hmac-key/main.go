// Command hmac-key generates a random HMAC signing secret suitable for
// authkit.Config.Secret and prints it to stdout.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dsmirnov/authkit/randx"
)

func main() {
	size := flag.Int("size", 32, "secret length in bytes")
	flag.Parse()

	if *size < 32 {
		fmt.Fprintln(os.Stderr, "refusing to generate a secret shorter than 32 bytes")
		os.Exit(1)
	}

	key, err := randx.Token(*size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(key)
}
