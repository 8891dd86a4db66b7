package main

import "github.com/vietddude/codemarket/internal/cli"

func main() {
	cli.Execute()
}
