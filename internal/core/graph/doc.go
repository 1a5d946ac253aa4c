// Package graph is the in-memory coaching graph and its infection engine.
//
// Users are nodes labeled with an integer id and a version. A directed
// coach→student edge links two users; for connectivity purposes edges are
// treated as undirected, so every user belongs to exactly one connected
// component.
//
// The Graph is the only owner of user records. Neighbor sets hold ids, never
// pointers, and are always symmetric:
//
//	B ∈ A.Students  ⇔  A ∈ B.CoachedBy
//
// Component sizes are derived state. Any structural mutation (CreateUser,
// RemoveUser, AddEdge, RemoveEdge, Clear) marks the cache dirty; it is rebuilt
// lazily by the next component-level call with a single ascending-id sweep, so
// every component is represented by its smallest user id.
//
// Infection operations:
//
//	TotalInfection(root, v)          // whole component of root
//	LimitedInfectionSimple(k, v)     // exactly min(k, |V|) users, ≤1 split component
//	ApproximateInfection(v, k, opts) // whole components summing to k±ε
//	ExactInfection(k, v)             // whole components summing to exactly k
//
// Approximate and exact infection select components with a subset-sum table of
// (k+ε+1)·(n+1) cells. Candidate sums are scanned outward from k: k, then k-1
// and k+1, and so on up to ε, lower side first unless WithTieBreak(UpperFirst)
// is given. When no candidate is reachable ErrInfeasible is returned and no
// version is changed. A table above the WithMaxTableCells limit, or one whose
// height k+ε+1 overflows int, fails with ErrTableTooLarge before allocation.
//
// A Graph is not safe for concurrent use. Callers must not mutate it while a
// traversal or selection is running.
package graph
