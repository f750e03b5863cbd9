// Command profanity checks and censors text from the command line
package main

import (
	"os"

	"profanity/internal/cli"
)

func main() { os.Exit(cli.Execute()) }
