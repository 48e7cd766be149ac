package main

import "ruleguard/cmd/rg/root"

func main() {
	root.Execute()
}
