package splitting

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExpandUnits", func() {
	var (
		items ItemTable
		cards []UnitCard
	)

	JustBeforeEach(func() {
		cards = ExpandUnits(items)
	})

	When("expanding a table with several items", func() {
		BeforeEach(func() {
			bananas, _ := NewLineItem("Bananas", 3, 1.50)
			milk, _ := NewLineItem("Milk", 1, 4.28)
			items = ItemTable{bananas, milk}
		})

		It("should emit one card per unit", func() {
			Expect(cards).To(HaveLen(4))
		})

		It("should preserve item order and ordinal order", func() {
			Expect(cards).To(Equal([]UnitCard{
				{Item: 0, Ordinal: 0},
				{Item: 0, Ordinal: 1},
				{Item: 0, Ordinal: 2},
				{Item: 1, Ordinal: 0},
			}))
		})

		It("should emit exactly quantity cards for every item", func() {
			for i, item := range items {
				count := 0
				for _, card := range cards {
					if card.Item == i {
						count++
					}
				}
				Expect(count).To(Equal(item.Quantity))
			}
		})
	})

	When("the table is empty", func() {
		BeforeEach(func() {
			items = nil
		})

		It("should emit no cards", func() {
			Expect(cards).To(BeEmpty())
		})
	})
})

var _ = Describe("UnitCard keys", func() {
	It("should round-trip through Key and ParseCardKey", func() {
		card := UnitCard{Item: 2, Ordinal: 1}
		Expect(card.Key()).To(Equal("2_1"))

		parsed, err := ParseCardKey("2_1")
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed).To(Equal(card))
	})

	It("should reject keys without a separator", func() {
		_, err := ParseCardKey("21")
		Expect(err).To(HaveOccurred())
	})

	It("should reject keys with non-numeric parts", func() {
		_, err := ParseCardKey("a_b")
		Expect(err).To(HaveOccurred())
	})
})
