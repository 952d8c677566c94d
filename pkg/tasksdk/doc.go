/*
Package tasksdk is a Go client for the task list API.

A Client talks to the public endpoints. Registering or logging in returns a
Session which carries the bearer token for everything under /api/tasks:

	client := tasksdk.NewClient("http://localhost:3001")

	session, err := client.Login(ctx, "alice", "secret1")
	if err != nil {
		return err
	}

	task, err := session.CreateTask(ctx, "buy milk")
	tasks, err := session.ListTasks(ctx)
	_, err = session.CompleteTask(ctx, task.ID, true)

Tokens last an hour and cannot be refreshed, log in again once a request fails
with IsNotAuthorized.

# Error Handling

Every non-2xx response is returned as an *APIError holding the status code and
the server's error code and message:

	_, err := session.GetTask(ctx, id)
	var apiErr *tasksdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		// gone
	}

Note that the server answers 401 both for bad tokens and for tasks owned by
someone else.

The same types describe request and response bodies on the server, so the two
sides cannot drift apart.
*/
package tasksdk
