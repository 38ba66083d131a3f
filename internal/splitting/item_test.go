package splitting

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NewLineItem", func() {
	var (
		name     string
		quantity int
		total    float64
		item     LineItem
		err      error
	)

	BeforeEach(func() {
		name = "Bananas"
		quantity = 3
		total = 1.50
	})

	JustBeforeEach(func() {
		item, err = NewLineItem(name, quantity, total)
	})

	When("the item is valid", func() {
		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should keep the fields", func() {
			Expect(item.Name).To(Equal("Bananas"))
			Expect(item.Quantity).To(Equal(3))
			Expect(item.Total).To(Equal(1.50))
		})

		It("should derive the unit price", func() {
			Expect(item.UnitPrice()).To(BeNumerically("~", 0.50, 0.01))
		})
	})

	When("the quantity is zero", func() {
		BeforeEach(func() {
			quantity = 0
		})

		It("returns an invalid item error", func() {
			Expect(err).To(MatchError(ErrInvalidItem))
		})
	})

	When("the quantity is negative", func() {
		BeforeEach(func() {
			quantity = -2
		})

		It("returns an invalid item error", func() {
			Expect(err).To(MatchError(ErrInvalidItem))
		})
	})

	When("the total is negative", func() {
		BeforeEach(func() {
			total = -0.01
		})

		It("returns an invalid item error", func() {
			Expect(err).To(MatchError(ErrInvalidItem))
		})
	})

	When("the name is empty", func() {
		BeforeEach(func() {
			name = ""
		})

		It("returns an invalid item error", func() {
			Expect(err).To(MatchError(ErrInvalidItem))
		})
	})
})

var _ = Describe("ItemTable", func() {
	Describe("Append", func() {
		It("should keep insertion order and stable indexes", func() {
			var table ItemTable
			bananas, _ := NewLineItem("Bananas", 3, 1.50)
			tax, _ := NewLineItem("Tax", 1, 2.37)
			table = table.Append(bananas)
			table = table.Append(tax)

			Expect(table).To(HaveLen(2))
			Expect(table[0].Name).To(Equal("Bananas"))
			Expect(table[1].Name).To(Equal("Tax"))
		})
	})

	Describe("TotalCost", func() {
		It("should sum all item totals", func() {
			bananas, _ := NewLineItem("Bananas", 3, 1.50)
			eggs, _ := NewLineItem("Eggs", 2, 6.54)
			table := ItemTable{bananas, eggs}
			Expect(table.TotalCost()).To(BeNumerically("~", 8.04, 0.001))
		})
	})
})
