package mapper_test

import (
	"fmt"

	"universal-mapper/mapper"
	"universal-mapper/remap"
)

type LegacyCustomer struct {
	FullName string
	Password string
	Age      string
	Orders   []LegacyOrder
}

type LegacyOrder struct {
	Number int
	Total  string
}

type Customer struct {
	Name     string
	Password string
	Age      int
	Orders   []Order
}

type Order struct {
	Number int64
	Total  float64
}

func Example() {
	cfg := remap.NewConfig()
	remap.For[LegacyCustomer, Customer](cfg).
		Map("FullName", "Name").
		Drop("Password")

	src := LegacyCustomer{
		FullName: "Ada Lovelace",
		Password: "secret",
		Age:      "36",
		Orders:   []LegacyOrder{{Number: 1, Total: "9.5"}, {Number: 2, Total: "12"}},
	}

	res, err := mapper.To[Customer](mapper.Default(), src, mapper.WithRemap(cfg))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%+v\n", res)
	// Output:
	// {Name:Ada Lovelace Password: Age:36 Orders:[{Number:1 Total:9.5} {Number:2 Total:12}]}
}

func ExampleWithPolicy() {
	type in struct {
		Name string
		Age  string
	}

	type out struct {
		Name string
		Age  int
	}

	_, err := mapper.To[out](mapper.Default(), in{Name: "bob", Age: "old"})
	fmt.Println(err != nil)

	res, err := mapper.To[out](mapper.Default(), in{Name: "bob", Age: "old"}, mapper.WithPolicy(mapper.Skip))
	fmt.Println(res, err)
	// Output:
	// true
	// {bob 0} <nil>
}

func ExampleMapper_CopyNonZero() {
	type patch struct {
		Name  string
		Email string
	}

	type user struct {
		Name  string
		Email string
	}

	u := user{Name: "ann", Email: "ann@old.example"}
	if err := mapper.Default().CopyNonZero(patch{Email: "ann@new.example"}, &u); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(u.Name, u.Email)
	// Output: ann ann@new.example
}
