// Package glue bridges an asynchronous platform lifecycle to a single
// worker thread that owns every native resource.
//
// The platform (owner) thread calls the blocking setters on App: SetWindow,
// SetInputSource, SetActivityState, SaveState and Destroy. Each one records
// its request under the App lock, writes a one-byte Command to the command
// pipe and waits on the condition variable until the worker has applied it.
//
// The worker reads commands from the pipe through a Looper, which also
// watches the attached InputSource. Every command runs in three steps:
//
//	preExec   transitions the handler must already see (new window, state)
//	Handler   application logic (GL setup/teardown, audio, script)
//	postExec  transitions that must wait for the handler (window cleared,
//	          save-state acknowledged, stale state discarded)
//
// Window termination is the motivating case: the handler tears down GPU
// resources against the still-current window and only then does the
// waiting platform call return.
package glue
