package main

import "shopify-sync/cmd"

func main() {
	cmd.Execute()
}
