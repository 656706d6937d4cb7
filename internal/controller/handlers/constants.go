package handlers

// MaxFieldLength bounds every free-text answer. Longer input is rejected
// with a re-prompt instead of being truncated.
const MaxFieldLength = 100
