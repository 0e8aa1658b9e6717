package doctpl_test

import (
	"bytes"
	"fmt"

	"github.com/lvillar/calcpdf/doctpl"
)

func ExampleRender() {
	template := `
title: Offer n°12
locale: en
company: {name: Acme SA, address: 1 Main Street, url: "https://acme.example"}
pages:
  - elements:
      - {type: heading, text: Garden wall renovation, level: 1}
      - {type: paragraph, text: "Customer: Acme Corp"}
      - {type: hr}
      - type: table
        columns:
          - {header: Item}
          - {header: Qty, width: 20, fixed: true, align: C, format: integer}
          - {header: Price, width: 30, fixed: true, align: R, format: amount}
        groups:
          - title: Materials
            rows:
              - [Concrete blocks, 200, 2.5]
              - [Mortar, 10, 12]
          - title: Labour
            rows:
              - [Mason, 16, 65]
        footer: [Total, "", 1660]
      - {type: paragraph, text: Thank you for your business!, align: C, color: "#646464"}
`

	var buf bytes.Buffer
	if err := doctpl.Render(&buf, []byte(template)); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	// Output: true
}
