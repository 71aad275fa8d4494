package main

func main() {
	initViper()
	Execute()
}
