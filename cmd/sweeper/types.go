package main

// InviteJob is the payload sent from API -> SQS -> sweeper. Mirrors
// handlers.InviteJob.
type InviteJob struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
