package main

import "conan-bridge/internal/cli"

func main() {
	cli.Execute()
}
