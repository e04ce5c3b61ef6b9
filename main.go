package main

import "github.com/maxvaer/sitemapprobe/cmd"

func main() {
	cmd.Execute()
}
