package forge

import (
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
)

// Page templates are compiled from strings so the fixture forge ships as a
// single binary with no template directory to locate.

var layoutTemplate = pongo2.Must(pongo2.FromString(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ title }} - Hub</title>
</head>
<body>
{% if user %}
<nav data-testid="main-nav">
  <a href="/dashboard" data-testid="nav-dashboard">Dashboard</a>
  <a href="/notifications" data-testid="nav-notifications">Notifications</a>
  <a href="/search" data-testid="nav-search">Search</a>
  <a href="/admin" data-testid="nav-admin">Admin</a>
  <a href="/settings/security" data-testid="nav-security">Security</a>
  <span data-testid="nav-username">{{ user }}</span>
  <button type="button" data-testid="logout-button" onclick="hubLogout()">Sign out</button>
</nav>
<script>
function hubLogout() {
  fetch('/api/auth/logout', {method: 'POST'}).then(function () {
    window.location.href = '/login';
  });
}
</script>
{% endif %}
<main>
{{ body|safe }}
</main>
</body>
</html>`))

var loginTemplate = pongo2.Must(pongo2.FromString(`
<h1 data-testid="login-heading">Sign in to Hub</h1>
<form id="login-form" data-testid="login-form">
  <input type="email" id="email" name="email" data-testid="email-input" placeholder="Email">
  <input type="password" id="password" name="password" data-testid="password-input" placeholder="Password">
  <button type="submit" data-testid="login-button">Sign in</button>
</form>
<div id="login-error" data-testid="login-error" hidden></div>
<p><a href="/register" data-testid="register-link">Create an account</a></p>
<script>
document.getElementById('login-form').addEventListener('submit', function (ev) {
  ev.preventDefault();
  var errEl = document.getElementById('login-error');
  errEl.hidden = true;
  fetch('/api/auth/login', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({
      email: document.getElementById('email').value,
      password: document.getElementById('password').value
    })
  }).then(function (resp) {
    if (resp.ok) {
      window.location.href = '/dashboard';
      return;
    }
    return resp.json().then(function (data) {
      errEl.textContent = (data && data.error) || 'Sign in failed';
      errEl.hidden = false;
    });
  }).catch(function () {
    errEl.textContent = 'Sign in failed';
    errEl.hidden = false;
  });
});
</script>`))

var registerTemplate = pongo2.Must(pongo2.FromString(`
<h1 data-testid="register-heading">Create your account</h1>
<form id="register-form" data-testid="register-form">
  <input type="text" id="full-name" data-testid="fullname-input" placeholder="Full name">
  <input type="text" id="username" data-testid="username-input" placeholder="Username">
  <input type="email" id="reg-email" data-testid="email-input" placeholder="Email">
  <input type="password" id="reg-password" data-testid="password-input" placeholder="Password">
  <input type="password" id="confirm-password" data-testid="confirm-password-input" placeholder="Confirm password">
  <button type="submit" data-testid="register-button">Create account</button>
</form>
<div id="register-error" data-testid="register-error" hidden></div>
<script>
document.getElementById('register-form').addEventListener('submit', function (ev) {
  ev.preventDefault();
  var errEl = document.getElementById('register-error');
  errEl.hidden = true;
  var password = document.getElementById('reg-password').value;
  if (password !== document.getElementById('confirm-password').value) {
    errEl.textContent = 'Passwords do not match';
    errEl.hidden = false;
    return;
  }
  fetch('/api/auth/register', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({
      full_name: document.getElementById('full-name').value,
      username: document.getElementById('username').value,
      email: document.getElementById('reg-email').value,
      password: password
    })
  }).then(function (resp) {
    if (resp.ok) {
      window.location.href = '/login';
      return;
    }
    return resp.json().then(function (data) {
      errEl.textContent = (data && data.error) || 'Registration failed';
      errEl.hidden = false;
    });
  });
});
</script>`))

var dashboardTemplate = pongo2.Must(pongo2.FromString(`
<h1 data-testid="dashboard-heading">Welcome back, {{ user }}</h1>
<h2>Your repositories</h2>
<div id="repo-list" data-testid="repo-list" data-loading="true" class="loading">Loading repositories...</div>
<script>
(function () {
  var el = document.getElementById('repo-list');
  fetch('/api/v1/repositories').then(function (resp) {
    if (!resp.ok) { throw new Error('request failed'); }
    return resp.json();
  }).then(function (data) {
    el.innerHTML = data.repositories.map(function (repo) {
      return '<div class="repo-item" data-testid="repo-item">' +
        '<a href="/' + repo.owner + '/' + repo.name + '" data-testid="repo-link">' +
        repo.owner + '/' + repo.name + '</a>' +
        '<span data-testid="repo-updated">' + repo.updated_ago + '</span>' +
        '</div>';
    }).join('') || '<div data-testid="empty-state">No repositories yet</div>';
  }).catch(function () {
    el.innerHTML = '<div data-testid="error-message">Failed to load repositories</div>';
  }).finally(function () {
    el.removeAttribute('data-loading');
    el.classList.remove('loading');
  });
})();
</script>`))

var repoTemplate = pongo2.Must(pongo2.FromString(`
<h1 data-testid="repo-heading">{{ owner }}/{{ name }}</h1>
<p data-testid="repo-description">{{ description }}</p>
<span data-testid="repo-stars">{{ stars }}</span>
<span data-testid="repo-forks">{{ forks }}</span>
{% if private %}<span data-testid="repo-private-badge">Private</span>{% endif %}
<nav>
  <a href="/{{ owner }}/{{ name }}/pulls" data-testid="tab-pulls">Pull requests</a>
  <a href="/{{ owner }}/{{ name }}/issues" data-testid="tab-issues">Issues</a>
  <a href="/{{ owner }}/{{ name }}/actions" data-testid="tab-actions">Actions</a>
</nav>
<article data-testid="repo-readme">{{ readme|safe }}</article>`))

var pullsTemplate = pongo2.Must(pongo2.FromString(`
<h1 data-testid="pulls-heading">Pull requests - {{ owner }}/{{ name }}</h1>
<div id="pull-list" data-testid="pull-list" data-loading="true" class="loading">Loading pull requests...</div>
<script>
(function () {
  var el = document.getElementById('pull-list');
  fetch('/api/v1/repositories/{{ owner }}/{{ name }}/pulls').then(function (resp) {
    if (!resp.ok) { throw new Error('request failed'); }
    return resp.json();
  }).then(function (data) {
    el.innerHTML = data.pulls.map(function (pr) {
      return '<div class="pull-item" data-testid="pull-item" data-state="' + pr.state + '">' +
        '<span data-testid="pull-number">#' + pr.number + '</span> ' +
        '<span data-testid="pull-title">' + pr.title + '</span> ' +
        '<span data-testid="pull-state">' + pr.state + '</span> ' +
        '<span data-testid="pull-author">' + pr.author + '</span>' +
        '</div>';
    }).join('') || '<div data-testid="empty-state">No pull requests</div>';
  }).catch(function () {
    el.innerHTML = '<div data-testid="error-message">Failed to load pull requests</div>';
  }).finally(function () {
    el.removeAttribute('data-loading');
    el.classList.remove('loading');
  });
})();
</script>`))

var issuesTemplate = pongo2.Must(pongo2.FromString(`
<h1 data-testid="issues-heading">Issues - {{ owner }}/{{ name }}</h1>
<div id="issue-list" data-testid="issue-list" data-loading="true" class="loading">Loading issues...</div>
<script>
(function () {
  var el = document.getElementById('issue-list');
  fetch('/api/v1/repositories/{{ owner }}/{{ name }}/issues').then(function (resp) {
    if (!resp.ok) { throw new Error('request failed'); }
    return resp.json();
  }).then(function (data) {
    el.innerHTML = data.issues.map(function (issue) {
      var labels = (issue.labels || []).map(function (l) {
        return '<span class="label" data-testid="issue-label">' + l + '</span>';
      }).join('');
      return '<div class="issue-item" data-testid="issue-item" data-state="' + issue.state + '">' +
        '<span data-testid="issue-number">#' + issue.number + '</span> ' +
        '<span data-testid="issue-title">' + issue.title + '</span> ' +
        '<span data-testid="issue-state">' + issue.state + '</span> ' +
        labels +
        '</div>';
    }).join('') || '<div data-testid="empty-state">No issues</div>';
  }).catch(function () {
    el.innerHTML = '<div data-testid="error-message">Failed to load issues</div>';
  }).finally(function () {
    el.removeAttribute('data-loading');
    el.classList.remove('loading');
  });
})();
</script>`))

var actionsTemplate = pongo2.Must(pongo2.FromString(`
<h1 data-testid="actions-heading">Actions - {{ owner }}/{{ name }}</h1>
<div id="run-list" data-testid="run-list" data-loading="true" class="loading">Loading workflow runs...</div>
<pre id="run-logs" data-testid="run-logs"></pre>
<script>
(function () {
  var el = document.getElementById('run-list');
  fetch('/api/v1/repositories/{{ owner }}/{{ name }}/actions/runs').then(function (resp) {
    if (!resp.ok) { throw new Error('request failed'); }
    return resp.json();
  }).then(function (data) {
    el.innerHTML = data.runs.map(function (run) {
      return '<div class="run-item" data-testid="run-item" data-run-id="' + run.id + '"' +
        ' data-conclusion="' + (run.conclusion || '') + '">' +
        '<span data-testid="run-workflow">' + run.workflow + '</span> ' +
        '<span data-testid="run-number">#' + run.number + '</span> ' +
        '<span data-testid="run-status">' + run.status + '</span> ' +
        '<span data-testid="run-conclusion">' + (run.conclusion || 'pending') + '</span> ' +
        '<button type="button" data-testid="view-logs-button" onclick="hubViewLogs(\'' + run.id + '\')">View logs</button>' +
        '</div>';
    }).join('') || '<div data-testid="empty-state">No workflow runs</div>';
  }).catch(function () {
    el.innerHTML = '<div data-testid="error-message">Failed to load workflow runs</div>';
  }).finally(function () {
    el.removeAttribute('data-loading');
    el.classList.remove('loading');
  });
})();

function hubViewLogs(runID) {
  var logs = document.getElementById('run-logs');
  logs.textContent = '';
  logs.setAttribute('data-loading', 'true');
  var scheme = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var ws = new WebSocket(scheme + location.host +
    '/api/v1/repositories/{{ owner }}/{{ name }}/actions/runs/' + runID + '/logs/ws');
  ws.onmessage = function (ev) {
    logs.textContent += ev.data + '\n';
  };
  ws.onclose = function () {
    logs.removeAttribute('data-loading');
  };
  ws.onerror = function () {
    logs.textContent = 'log stream failed';
    logs.removeAttribute('data-loading');
  };
}
</script>`))

var notificationsTemplate = pongo2.Must(pongo2.FromString(`
<h1 data-testid="notifications-heading">Notifications</h1>
<div id="notification-list" data-testid="notification-list" data-loading="true" class="loading">Loading notifications...</div>
<script>
function hubLoadNotifications() {
  var el = document.getElementById('notification-list');
  el.setAttribute('data-loading', 'true');
  fetch('/api/v1/notifications').then(function (resp) {
    if (!resp.ok) { throw new Error('request failed'); }
    return resp.json();
  }).then(function (data) {
    el.innerHTML = data.notifications.map(function (n) {
      return '<div class="notification-item" data-testid="notification-item"' +
        ' data-unread="' + n.unread + '">' +
        '<span data-testid="notification-title">' + n.title + '</span> ' +
        '<span data-testid="notification-repo">' + n.repository + '</span> ' +
        (n.unread
          ? '<button type="button" data-testid="mark-read-button" onclick="hubMarkRead(\'' + n.id + '\')">Mark read</button>'
          : '') +
        '</div>';
    }).join('') || '<div data-testid="empty-state">All caught up</div>';
  }).catch(function () {
    el.innerHTML = '<div data-testid="error-message">Failed to load notifications</div>';
  }).finally(function () {
    el.removeAttribute('data-loading');
    el.classList.remove('loading');
  });
}
function hubMarkRead(id) {
  // Flag the reload before the PUT resolves so waits on the loading
  // marker cover the whole round trip.
  document.getElementById('notification-list').setAttribute('data-loading', 'true');
  fetch('/api/v1/notifications/' + id + '/read', {method: 'PUT'}).then(function () {
    hubLoadNotifications();
  });
}
hubLoadNotifications();
</script>`))

var searchTemplate = pongo2.Must(pongo2.FromString(`
<h1 data-testid="search-heading">Search</h1>
<form id="search-form" data-testid="search-form">
  <input type="text" id="search-input" data-testid="search-input" placeholder="Search repositories, issues, users">
  <button type="submit" data-testid="search-button">Search</button>
</form>
<div id="search-results" data-testid="search-results"></div>
<script>
document.getElementById('search-form').addEventListener('submit', function (ev) {
  ev.preventDefault();
  var el = document.getElementById('search-results');
  el.setAttribute('data-loading', 'true');
  el.classList.add('loading');
  var q = document.getElementById('search-input').value;
  fetch('/api/v1/search?q=' + encodeURIComponent(q)).then(function (resp) {
    if (!resp.ok) { throw new Error('request failed'); }
    return resp.json();
  }).then(function (data) {
    var parts = [];
    data.repositories.forEach(function (repo) {
      parts.push('<div data-testid="search-result-repo">' + repo.owner + '/' + repo.name + '</div>');
    });
    data.issues.forEach(function (issue) {
      parts.push('<div data-testid="search-result-issue">' + issue.title + '</div>');
    });
    data.users.forEach(function (u) {
      parts.push('<div data-testid="search-result-user">' + u.username + '</div>');
    });
    el.innerHTML = parts.join('') || '<div data-testid="empty-state">No results</div>';
  }).catch(function () {
    el.innerHTML = '<div data-testid="error-message">Search failed</div>';
  }).finally(function () {
    el.removeAttribute('data-loading');
    el.classList.remove('loading');
  });
});
</script>`))

var adminTemplate = pongo2.Must(pongo2.FromString(`
<h1 data-testid="admin-heading">Site administration</h1>
<h2>Users</h2>
<div id="admin-users" data-testid="admin-user-list" data-loading="true" class="loading">Loading users...</div>
<h2>Runners</h2>
<div id="admin-runners" data-testid="runner-list" data-loading="true" class="loading">Loading runners...</div>
<script>
(function () {
  var usersEl = document.getElementById('admin-users');
  fetch('/api/v1/admin/users').then(function (resp) {
    if (!resp.ok) { throw new Error('request failed'); }
    return resp.json();
  }).then(function (data) {
    usersEl.innerHTML = data.users.map(function (u) {
      return '<div class="admin-user" data-testid="admin-user-item">' +
        '<span data-testid="admin-user-name">' + u.username + '</span> ' +
        '<span data-testid="admin-user-email">' + u.email + '</span>' +
        (u.is_admin ? ' <span data-testid="admin-badge">admin</span>' : '') +
        '</div>';
    }).join('');
  }).catch(function () {
    usersEl.innerHTML = '<div data-testid="error-message">Failed to load users</div>';
  }).finally(function () {
    usersEl.removeAttribute('data-loading');
    usersEl.classList.remove('loading');
  });

  var runnersEl = document.getElementById('admin-runners');
  fetch('/api/v1/admin/runners').then(function (resp) {
    if (!resp.ok) { throw new Error('request failed'); }
    return resp.json();
  }).then(function (data) {
    runnersEl.innerHTML = data.runners.map(function (r) {
      return '<div class="runner-item" data-testid="runner-item" data-status="' + r.status + '">' +
        '<span data-testid="runner-name">' + r.name + '</span> ' +
        '<span data-testid="runner-status">' + r.status + '</span>' +
        '</div>';
    }).join('') || '<div data-testid="empty-state">No runners registered</div>';
  }).catch(function () {
    runnersEl.innerHTML = '<div data-testid="error-message">Failed to load runners</div>';
  }).finally(function () {
    runnersEl.removeAttribute('data-loading');
    runnersEl.classList.remove('loading');
  });
})();
</script>`))

var securityTemplate = pongo2.Must(pongo2.FromString(`
<h1 data-testid="security-heading">Security settings</h1>
<h2>SSH keys</h2>
<div id="key-list" data-testid="ssh-key-list" data-loading="true" class="loading">Loading keys...</div>
<form id="add-key-form" data-testid="add-key-form">
  <input type="text" id="key-title" data-testid="key-title-input" placeholder="Key title">
  <input type="text" id="key-content" data-testid="key-content-input" placeholder="ssh-ed25519 ...">
  <button type="submit" data-testid="add-key-button">Add key</button>
</form>
<script>
function hubLoadKeys() {
  var el = document.getElementById('key-list');
  el.setAttribute('data-loading', 'true');
  fetch('/api/v1/user/keys').then(function (resp) {
    if (!resp.ok) { throw new Error('request failed'); }
    return resp.json();
  }).then(function (data) {
    el.innerHTML = data.keys.map(function (k) {
      return '<div class="key-item" data-testid="ssh-key-item">' +
        '<span data-testid="ssh-key-title">' + k.title + '</span> ' +
        '<code data-testid="ssh-key-fingerprint">' + k.fingerprint + '</code>' +
        '</div>';
    }).join('') || '<div data-testid="empty-state">No SSH keys</div>';
  }).catch(function () {
    el.innerHTML = '<div data-testid="error-message">Failed to load keys</div>';
  }).finally(function () {
    el.removeAttribute('data-loading');
    el.classList.remove('loading');
  });
}
document.getElementById('add-key-form').addEventListener('submit', function (ev) {
  ev.preventDefault();
  document.getElementById('key-list').setAttribute('data-loading', 'true');
  fetch('/api/v1/user/keys', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({
      title: document.getElementById('key-title').value,
      key: document.getElementById('key-content').value
    })
  }).then(function () {
    hubLoadKeys();
  });
});
hubLoadKeys();
</script>`))

func renderPage(c *gin.Context, title string, body *pongo2.Template, ctx pongo2.Context) {
	if ctx == nil {
		ctx = pongo2.Context{}
	}
	bodyHTML, err := body.Execute(ctx)
	if err != nil {
		c.String(http.StatusInternalServerError, "template error: %v", err)
		return
	}
	layoutCtx := pongo2.Context{
		"title": title,
		"body":  bodyHTML,
	}
	if u, ok := ctx["user"]; ok {
		layoutCtx["user"] = u
	}
	out, err := layoutTemplate.Execute(layoutCtx)
	if err != nil {
		c.String(http.StatusInternalServerError, "template error: %v", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}
