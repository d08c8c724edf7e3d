/*
Package operation implements the download pipeline that runs on every hotkey
press, and the materializer that puts retrieved files on disk.

	+-------------+      +-------------+      +--------------+
	|  Clipboard  | ---> |  Validate   | ---> |    Fetch     |
	+-------------+      +-------------+      +------+-------+
	                                                 |
	                     +-------------+      +------+-------+
	                     | Materialize | <--- |   Choose     |
	                     +-------------+      |  directory   |
	                                          +--------------+

🎯 Purpose:
- Reads and validates the clipboard reference
- Fetches the referenced content through a remote.Client
- Asks the user where to put it
- Writes every file that does not exist yet

🔄 Flow:
1. Empty clipboard or no connected client: return silently
2. Invalid reference: "Invalid Hash" alert
3. Fetch failure: "Error while downloading" alert, cause logged
4. No directory chosen: logged, nothing written
5. More than one file: files go into <dir>/<reference>/
6. Each file is written or skipped independently

⚡ Key Responsibilities:
- Per-invocation control flow
- User-facing error reporting (exactly once per invocation)
- Best-effort writes: a failed file never stops its siblings
- Running invocations in the background (Runner)

🤝 Interfaces:
- Clipboard, Alerter, Chooser: desktop collaborators
- remote.Source: the content network client
- status.Manager: disk access below the target root

📝 Design Philosophy:
Existing files win. The materializer never compares or overwrites what is
already on disk, which makes a repeated download of the same reference a no-op.
The existence check and the write are not atomic; two invocations racing on the
same destination are accepted for a single-user hotkey tool.
*/
package operation
