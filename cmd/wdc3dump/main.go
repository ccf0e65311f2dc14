package main

import "github.com/arloliu/wdc3/cmd/wdc3dump/cmd"

func main() {
	cmd.Execute()
}
