package main

import "github.com/masnyjimmy/wsparam/cmd"

func main() {
	cmd.Execute()
}
