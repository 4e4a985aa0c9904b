/*
Package dsl provides a fluent builder for constructing scenes in Go code.

It is the quickest way to get a populated stage for tests, examples or
programmatic scene generation without writing a YAML stage file.

Example usage:

	b := dsl.New("city")
	b.Xform("/World")
	b.Mesh("/World/Box").Translate(0, 0, 50)
	b.Mesh("/World/Box/Lid")

	stage, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
*/
package dsl
