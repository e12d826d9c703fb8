// Package fixtures holds small Superstore exports shared by tests. Only
// _test.go files import it.
package fixtures

// Orders is a ten row export spanning two regions, two categories and the
// January to February 2024 month boundary. Dates are day-first.
//
// Totals: Sales 2100, Profit 220, Quantity 22, six distinct customers.
const Orders = `Row ID,Order Date,Ship Date,Customer ID,Segment,Region,State,Category,Sub-Category,Product Name,Ship Mode,Sales,Quantity,Discount,Profit
1,30/01/2024,02/02/2024,C1,Consumer,East,New York,Furniture,Chairs,Chair A,Standard Class,100,2,0,20
2,31/01/2024,03/02/2024,C2,Corporate,East,New York,Technology,Phones,Phone A,Second Class,200,1,0.1,50
3,01/02/2024,05/02/2024,C1,Consumer,West,California,Furniture,Tables,Table A,Standard Class,300,3,0.2,-30
4,02/02/2024,03/02/2024,C3,Home Office,West,California,Technology,Phones,Phone B,First Class,400,4,0.3,80
5,03/02/2024,07/02/2024,C4,Consumer,East,Ohio,Furniture,Chairs,Chair B,Standard Class,50,1,0.5,-10
6,04/02/2024,06/02/2024,C2,Corporate,West,Oregon,Technology,Accessories,Mouse,Second Class,150,5,0,30
7,15/01/2024,19/01/2024,C5,Consumer,East,Ohio,Technology,Accessories,Keyboard,Standard Class,250,2,0.6,-50
8,20/01/2024,21/01/2024,C3,Home Office,West,Oregon,Furniture,Tables,Table B,First Class,350,1,0,70
9,10/02/2024,14/02/2024,C6,Consumer,East,New York,Furniture,Chairs,Chair A,Standard Class,100,2,0,20
10,12/02/2024,12/02/2024,C1,Consumer,West,California,Technology,Phones,Phone A,Same Day,200,1,0.2,40
`

// Minimal carries only the required columns.
const Minimal = `Sales,Region,Category
1000,East,Furniture
500,West,Technology
`

// NoRegion lacks a required column.
const NoRegion = `Sales,Category
1000,Furniture
`
