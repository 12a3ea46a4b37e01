package api

import "net/http"

// Menu handles GET /: a small HTML landing page linking to the forms,
// the docs and the inventory listing.
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, menuHTML)
}

// RegisterForm handles GET /RegisterForm.html.
func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, registerFormHTML)
}

// SearchForm handles GET /SearchForm.html.
func (h *Handler) SearchForm(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, searchFormHTML)
}

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

const menuHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Inventory Menu</title>
    <style>
        body { font-family: Arial, sans-serif; padding: 40px; max-width: 600px; margin: 0 auto; }
        h1 { color: #333; }
        ul { list-style-type: none; padding: 0; }
        li { margin: 15px 0; border: 1px solid #ddd; padding: 15px; border-radius: 8px; background: #f9f9f9; }
        a { text-decoration: none; color: #007BFF; font-weight: bold; font-size: 18px; display: block; }
        a:hover { color: #0056b3; }
    </style>
</head>
<body>
    <h1>&#128230; Inventory Service</h1>
    <ul>
        <li><a href="/RegisterForm.html">&#128221; 1. Register an item</a></li>
        <li><a href="/docs">&#128218; 2. API documentation</a></li>
        <li><a href="/SearchForm.html">&#128269; 3. Find an item</a></li>
        <li><a href="/inventory">&#128203; 4. All items (JSON)</a></li>
    </ul>
</body>
</html>
`

const registerFormHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Register Item</title>
    <style>
        body { font-family: Arial, sans-serif; padding: 40px; max-width: 500px; margin: 0 auto; }
        label { display: block; margin-top: 15px; font-weight: bold; }
        input, textarea { width: 100%; padding: 8px; margin-top: 5px; box-sizing: border-box; }
        button { margin-top: 20px; padding: 10px 25px; background: #007BFF; color: white; border: none; border-radius: 5px; cursor: pointer; }
        button:hover { background: #0056b3; }
    </style>
</head>
<body>
    <h1>Register Item</h1>
    <form action="/register" method="post" enctype="multipart/form-data">
        <label for="inventory_name">Name</label>
        <input type="text" id="inventory_name" name="inventory_name" required>
        <label for="description">Description</label>
        <textarea id="description" name="description" rows="3"></textarea>
        <label for="photo">Photo</label>
        <input type="file" id="photo" name="photo" accept="image/*">
        <button type="submit">Register</button>
    </form>
    <p><a href="/">&larr; Back to menu</a></p>
</body>
</html>
`

const searchFormHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Find Item</title>
    <style>
        body { font-family: Arial, sans-serif; padding: 40px; max-width: 500px; margin: 0 auto; }
        label { display: block; margin-top: 15px; font-weight: bold; }
        input[type=text] { width: 100%; padding: 8px; margin-top: 5px; box-sizing: border-box; }
        button { margin-top: 20px; padding: 10px 25px; background: #007BFF; color: white; border: none; border-radius: 5px; cursor: pointer; }
        #result { margin-top: 25px; padding: 15px; border: 1px solid #ddd; border-radius: 8px; display: none; }
        #result img { max-width: 100%; border-radius: 8px; margin-top: 10px; }
        .error { color: red; }
    </style>
</head>
<body>
    <h1>Find Item</h1>
    <form id="search-form">
        <label for="id">Item ID</label>
        <input type="text" id="id" name="id" required>
        <label><input type="checkbox" id="includePhoto" name="includePhoto"> Include photo</label>
        <button type="submit">Search</button>
    </form>
    <div id="result"></div>
    <p><a href="/">&larr; Back to menu</a></p>
    <script>
        document.getElementById("search-form").addEventListener("submit", async function (e) {
            e.preventDefault();
            const id = document.getElementById("id").value;
            const includePhoto = document.getElementById("includePhoto").checked;
            const result = document.getElementById("result");
            result.style.display = "block";
            const resp = await fetch("/search", {
                method: "POST",
                headers: { "Content-Type": "application/json" },
                body: JSON.stringify({ id: id, includePhoto: includePhoto })
            });
            if (!resp.ok) {
                result.innerHTML = '<p class="error">Item with ID <strong>' + id + '</strong> not found.</p>';
                return;
            }
            const item = await resp.json();
            let html = '<p><strong>Name:</strong> ' + item.name + '</p>' +
                '<p><strong>Description:</strong> ' + item.description + '</p>' +
                '<p><strong>ID:</strong> ' + item.id + '</p>';
            if (includePhoto && item.photo) {
                html += '<p><strong>Photo:</strong></p><img src="/inventory/' + item.id + '/photo" alt="Item Photo">';
            }
            result.innerHTML = html;
        });
    </script>
</body>
</html>
`
