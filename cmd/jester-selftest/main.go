package main

import (
	"jester/pkg/jester"
	"jester/suites/selftest"
)

func main() {
	program := jester.CreateProgram("selftest")

	program.AddSuite(selftest.ContextsSuite, selftest.Contexts())
	program.AddSuite(selftest.EqualitySuite, selftest.Equality())

	program.Run()
}
