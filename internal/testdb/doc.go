// Package testdb provides helpers for database integration tests.
//
// Tests connect with GetTestDBWithT, which skips the test when no database
// URL is configured, migrate the schema once per process with
// SetupTestDatabaseSchema, and isolate their writes with WithTx: each test
// body runs inside a transaction that is always rolled back.
//
//	func TestTopicStore(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.SetupTestDatabaseSchema(t, db)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        user := testdb.CreateTestUser(t, tx)
//	        ...
//	    })
//	}
package testdb
