package main

import "github.com/LinuxProativo/sandbox-utils/cmd"

func main() {
	cmd.Execute()
}
