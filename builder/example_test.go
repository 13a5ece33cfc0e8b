package builder_test

import (
	"fmt"

	"universal-mapper/builder"
)

type Flags struct {
	Low, Mid, High bool
}

func ExampleNumberToFlag() {
	b := builder.NumberToFlag[Flags]().
		AddMapping(0, "Low").
		AddMapping(1, "Mid").
		AddMapping(2, "High")

	res, err := b.Map(5)
	fmt.Printf("%+v %v\n", res, err)
	// Output: {Low:true Mid:false High:true} <nil>
}

func ExampleDictionaryToObject() {
	type Config struct {
		Name  string
		Debug bool
		Limit int
	}

	b := builder.DictionaryToObject[Config, string, string]().
		AddMapping("app.name", "Name").
		AddMapping("app.debug", "Debug").
		AddMapping("app.limit", "Limit")

	res, err := b.Map(map[string]string{
		"app.name":  "umap",
		"app.debug": "on",
		"app.limit": "10",
		"ignored":   "x",
	})
	fmt.Printf("%+v %v\n", res, err)
	// Output: {Name:umap Debug:true Limit:10} <nil>
}

func ExampleCollectionToObject() {
	type Row struct {
		Column string
		Cell   any
	}

	type Person struct {
		Name string
		Age  int
	}

	rows := []Row{{"name", "Grace"}, {"age", "85"}}

	res, err := builder.CollectionToObject[Person, Row]().
		AddMapping("name", "Name").
		AddMapping("age", "Age").
		Map(rows, func(r Row) any { return r.Column }, func(r Row) any { return r.Cell })
	fmt.Printf("%+v %v\n", res, err)
	// Output: {Name:Grace Age:85} <nil>
}
