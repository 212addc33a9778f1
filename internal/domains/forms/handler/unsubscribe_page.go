package handler

import "html/template"

// unsubscribePage asks for confirmation and posts back to Action
var unsubscribePage = template.Must(template.New("unsubscribe").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="robots" content="noindex">
<title>Unsubscribe | {{.SiteName}}</title>
<style>
body{font-family:system-ui,sans-serif;max-width:32rem;margin:4rem auto;padding:0 1rem;color:#2b2118}
button{background:#7a4b2a;color:#fff;border:0;padding:.6rem 1.2rem;border-radius:4px;cursor:pointer}
#status{margin-top:1rem}
</style>
</head>
<body>
<h1>Unsubscribe</h1>
<p>Stop sending the {{.SiteName}} newsletter to <strong>{{.Email}}</strong>?</p>
<button id="confirm" type="button">Unsubscribe</button>
<p id="status" role="status"></p>
<script>
document.getElementById("confirm").addEventListener("click", function () {
  var status = document.getElementById("status");
  this.disabled = true;
  fetch("{{.Action}}", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({email: {{.Email}}, token: {{.Token}}})
  }).then(function (r) { return r.json(); })
    .then(function (d) { status.textContent = d.message; })
    .catch(function () { status.textContent = "Something went wrong. Please try again."; });
});
</script>
</body>
</html>
`))

type unsubscribePageData struct {
	SiteName string
	Email    string
	Token    string
	Action   string
}
