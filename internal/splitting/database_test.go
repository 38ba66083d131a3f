package splitting

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BoltDB", func() {
	var (
		tmpDir string
		dbPath string
		db     *BoltDB
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		dbPath = filepath.Join(tmpDir, "test.db")
		var err error
		db, err = NewBoltDB(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	newTestSession := func(id string) *Session {
		bananas, err := NewLineItem("Bananas", 3, 1.50)
		Expect(err).NotTo(HaveOccurred())
		return &Session{
			ID:         id,
			OrderDate:  "Oct 5, 2023",
			Items:      ItemTable{bananas},
			Members:    []string{"Alice", "Bob"},
			Assignment: Assignment{"0_0": "Alice"},
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
	}

	Describe("SaveSession", func() {
		var (
			session *Session
			err     error
		)

		BeforeEach(func() {
			session = newTestSession("test-id")
		})

		JustBeforeEach(func() {
			err = db.SaveSession(session)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should save the session to the database", func() {
				saved, getErr := db.GetSession("test-id")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved.ID).To(Equal("test-id"))
			})
		})
	})

	Describe("GetSession", func() {
		var (
			sessionID string
			session   *Session
			err       error
		)

		JustBeforeEach(func() {
			session, err = db.GetSession(sessionID)
		})

		When("session exists", func() {
			BeforeEach(func() {
				sessionID = "test-id"
				Expect(db.SaveSession(newTestSession("test-id"))).NotTo(HaveOccurred())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should round-trip the items", func() {
				Expect(session.Items).To(HaveLen(1))
				Expect(session.Items[0].Name).To(Equal("Bananas"))
				Expect(session.Items[0].UnitPrice()).To(BeNumerically("~", 0.50, 0.001))
			})

			It("should round-trip the members", func() {
				Expect(session.Members).To(Equal([]string{"Alice", "Bob"}))
			})

			It("should round-trip the assignment", func() {
				Expect(session.Assignment).To(Equal(Assignment{"0_0": "Alice"}))
			})

			It("should round-trip the order date", func() {
				Expect(session.OrderDate).To(Equal("Oct 5, 2023"))
			})
		})

		When("session does not exist", func() {
			BeforeEach(func() {
				sessionID = "nonexistent"
			})

			It("returns ErrSessionNotFound", func() {
				Expect(err).To(MatchError(ErrSessionNotFound))
			})
		})
	})

	Describe("ListSessions", func() {
		var (
			sessions []*Session
			err      error
		)

		JustBeforeEach(func() {
			sessions, err = db.ListSessions()
		})

		When("sessions exist", func() {
			BeforeEach(func() {
				Expect(db.SaveSession(newTestSession("id1"))).NotTo(HaveOccurred())
				Expect(db.SaveSession(newTestSession("id2"))).NotTo(HaveOccurred())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return all sessions", func() {
				Expect(sessions).To(HaveLen(2))
			})
		})

		When("no sessions exist", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return an empty list", func() {
				Expect(sessions).To(BeEmpty())
			})
		})
	})

	Describe("DeleteSession", func() {
		var (
			sessionID string
			err       error
		)

		JustBeforeEach(func() {
			err = db.DeleteSession(sessionID)
		})

		When("session exists", func() {
			BeforeEach(func() {
				sessionID = "test-id"
				Expect(db.SaveSession(newTestSession("test-id"))).NotTo(HaveOccurred())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should remove the session from the database", func() {
				_, getErr := db.GetSession("test-id")
				Expect(getErr).To(HaveOccurred())
			})
		})

		When("session does not exist", func() {
			BeforeEach(func() {
				sessionID = "nonexistent"
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})
		})
	})

	Describe("Close", func() {
		It("should not return an error", func() {
			err := db.Close()
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
