/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/nsmthethwa44/Technova-API/cmd"

func main() {
	cmd.Execute()
}
