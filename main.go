package main

import "github.com/pgale/chime/internal/cli"

func main() {
	cli.Execute()
}
