package main

import "github.com/liralabs/lirabot/cmd"

func main() {
	cmd.Execute()
}
