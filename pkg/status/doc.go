/*
Package status carries reconciliation actions from the core to whoever
wants to hear about them.

	            +--------------+
	            |  Reconciler  |
	            |  (pkg/sync)  |
	            +------+-------+
	                   |
	              Notify(Action)
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+-----+
	|  Console  |           | Recorder |
	|  (UI/UX)  |           | (tests)  |
	+-----------+           +----------+

🎯 Purpose:
- Describes each planned or performed action as a value
- Decouples the reconciler from stdout so tests capture records, not text
- Keeps the human-readable line wording in exactly one place

🤝 Interfaces:
- Notifier: receives one Action per reconciliation step
- Console: prints the contract lines plus the confirmation banner
- Recorder: collects Actions for assertions
- Multi: fans out to several sinks

📝 Design Philosophy:
The reconciler never prints. It hands a status.Action to a Notifier and
moves on; how that becomes console output, log lines, or test
assertions is entirely this package's business.
*/
package status
