package main

import "blog-vector-search/cmd"

// main is the entry point of the blog-vector-search CLI.
func main() {
	cmd.Execute()
}
